// Package model holds the domain entities shared by the repository,
// service and handler layers.
package model

// Person is a single phonebook entry.
//
// ID is assigned at creation and never changes. Name is unique across the
// phonebook. Number is free-form.
type Person struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// SeedPersons returns the fixed set of entries every process starts with.
//
// A fresh slice is returned on each call so callers may keep it.
func SeedPersons() []Person {
	return []Person{
		{ID: 1, Name: "Arto Hellas", Number: "040-123456"},
		{ID: 2, Name: "Ada Lovelace", Number: "39-44-5323523"},
		{ID: 3, Name: "Dan Abramov", Number: "12-43-234345"},
		{ID: 4, Name: "Mary Poppendieck", Number: "39-23-6423122"},
	}
}
