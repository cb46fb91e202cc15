package models

// Model is implemented by all database models.
type Model interface {
	Self() string // Human readable name of the resource type
}
