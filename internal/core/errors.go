package core

import "errors"

var (
	// ErrNoRepositories is returned when discovery finds no Git repository.
	ErrNoRepositories = errors.New("no valid Git repositories found")

	// ErrNoCommits is returned when an operation needs matched commits and there are none.
	ErrNoCommits = errors.New("no matching commits")

	// ErrInvalidMode is returned for a search mode other than union or intersection.
	ErrInvalidMode = errors.New("invalid search mode")

	// ErrInvalidFormat is returned for an export format other than json or yaml.
	ErrInvalidFormat = errors.New("invalid export format")
)
