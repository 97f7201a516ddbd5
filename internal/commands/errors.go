package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// reportError prints err as "error: ..." and maps it to an exit code.
// Reference and validation problems are user errors; anything else came
// from the store itself.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, ErrTaskRefRequired),
		errors.Is(err, ErrInvalidTaskRef),
		errors.Is(err, ErrOutOfRange),
		errors.Is(err, ErrAmbiguousRef),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrEmptyTitle),
		errors.Is(err, service.ErrEmptyDescription):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.StoreError
	}
}

// resolveRef parses args as a task reference and resolves it against svc.
func resolveRef(svc service.Service, args []string) (service.Task, error) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return service.Task{}, err
	}
	return ResolveTask(svc, ref)
}
