// Package validate provides composable field validation rules for form
// submissions. Rules are assembled per endpoint and executed with Apply,
// which collects every violation instead of stopping at the first, so a
// submission is either fully valid or rejected with an itemized issue list.
package validate
