// Package ownership decides who may edit a user-created record.
//
// Staff may edit any record. Members may edit a record they created while the
// record is younger than the grace period; the window is the half-open
// interval [created_at, created_at+grace). Everything else is denied.
//
// Policy.Decide is pure. Editor wraps it in a load, decide, apply, save
// sequence that never writes after a denial.
package ownership
