package domain

import "errors"

// Domain errors
var (
	ErrUnknownEvent      = errors.New("unknown event type")
	ErrPoolModeRequired  = errors.New("variant forces the candidate pool mode")
	ErrCandidateNotFound = errors.New("candidate question not in pool")
)
