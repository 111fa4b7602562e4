/*
Package errors provides semantic error types for the hotswap registry.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrInvalidConfiguration = errors.New("invalid configuration")
	    ErrNotFound             = errors.New("not found")
	    ErrInvalidInput         = errors.New("invalid input")
	)

Usage:

	// Registration rejects types that are not entities or not swappable
	if err := registry.Register(testmodels.CommentClass); err != nil {
	    if errors.IsInvalidConfiguration(err) {
	        // the class is missing a required base or capability
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewInvalidConfigurationError("testmodels.Comment", errors.RequirementSwappable)
	err := errors.NewNotFoundError("alias", "book")
	err := errors.NewValidationError("alias", "must not be empty")

Resolving or making an unknown alias is not an error in the registry itself;
ErrNotFound is used by the adapters (manifest, datastore/ddb) that need a
failure to report.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
