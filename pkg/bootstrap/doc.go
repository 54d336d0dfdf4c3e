// Package bootstrap turns an empty installation into one with a single
// admin. After that it refuses forever, even if every user is later
// deleted.
package bootstrap
