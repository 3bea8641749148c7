// Package repository handles all interactions with stored data.
//
// The phonebook keeps its records in process memory; repositories own that
// state and hand out copies so the service layer never aliases it.
package repository
