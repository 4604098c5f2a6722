// Package mailer sends transactional notification emails through Postmark,
// with a file-backed sender for local development. Callers depend on the
// Sender interface so delivery can be stubbed in tests.
package mailer
