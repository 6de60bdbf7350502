// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "errors"

var (
	ErrAuthenticationFailed      = errors.New("authentication failed")
	ErrConnectionFailed          = errors.New("connection failed")
	ErrFolderNotFound            = errors.New("folder not found or not selectable")
	ErrMessageFetchFailed        = errors.New("message fetch failed")
	ErrClassificationUnavailable = errors.New("classifier unavailable")
	ErrMutationPartialFailure    = errors.New("some messages could not be mutated")
	ErrIdentifierNotFound        = errors.New("message identifier not found")
)
