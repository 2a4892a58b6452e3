package controllers

import "errors"

// Sentinels used to abort batch transactions with a specific HTTP outcome.
var (
	errBatchAccessDenied  = errors.New("some records not found or access denied")
	errBatchInvalidStatus = errors.New("some records are not in a deletable status")
)
