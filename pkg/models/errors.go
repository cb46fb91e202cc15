package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrReferenceInvalid = errors.New("a resource ID you specified does not reference an existing resource")
	ErrDatabaseBusy     = errors.New("the database is busy, please retry")
	ErrValueOutOfRange  = errors.New("a value is outside of the range the database can store")
)
