// Package forms implements the lead-capture intake pipeline behind the
// marketing site: rate requests, contact messages and newsletter
// subscription management. Submissions are transient; the only outcome of
// a successful submission is a staff notification email.
package forms
