// Package timezone pins every timestamp the API produces to one location.
//
// The location comes from APP_TIMEZONE (an IANA name such as "UTC" or
// "Asia/Jakarta") and is loaded once on first use. Stored timestamps go
// through Now so that bookings, expenses and blog posts share a clock.
//
// Calendar dates sent by clients (check-in, check-out, expense dates) are
// parsed with ParseDate, which reads "YYYY-MM-DD" or RFC 3339 and keeps
// the instant in the configured location.
package timezone
