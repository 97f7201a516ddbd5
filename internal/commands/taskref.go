package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"todo/internal/service"
)

// MinIDPrefix is the shortest ID prefix accepted as a task reference.
const MinIDPrefix = 4

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based list position, 0 if the reference is an ID
	ID  string // full ID or ID prefix, empty if the reference is a number
}

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrInvalidTaskRef indicates a reference that is neither a number nor an ID prefix.
	ErrInvalidTaskRef = errors.New("invalid task reference")

	// ErrOutOfRange indicates a list number with no task behind it.
	ErrOutOfRange = errors.New("task number out of range")

	// ErrAmbiguousRef indicates an ID prefix matching more than one task.
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → ErrTaskRefRequired
// 2. All digits → list number (1-based)
// 3. At least MinIDPrefix characters → ID or ID prefix
// 4. Anything else, or extra args → invalid task reference
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, strings.Join(args, " "))
	}

	ref := strings.TrimSpace(args[0])
	if ref == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, ref)
		}
		return TaskRef{Num: num}, nil
	}

	if len(ref) >= MinIDPrefix {
		return TaskRef{ID: ref}, nil
	}

	return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTask finds the task a reference points to.
// Numbers index the current list; IDs match exactly first, then by unique prefix.
func ResolveTask(svc service.Service, ref TaskRef) (service.Task, error) {
	if ref.ID == "" {
		return findTaskByNumber(svc, ref.Num)
	}

	if task, err := svc.Get(ref.ID); err == nil {
		return task, nil
	} else if !errors.Is(err, service.ErrNotFound) {
		return service.Task{}, err
	}

	var matches []service.Task
	for _, task := range svc.List() {
		if strings.HasPrefix(task.ID, ref.ID) {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 0:
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, ref.ID)
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref.ID)
	}
}

// findTaskByNumber returns the task at 1-based position num.
func findTaskByNumber(svc service.Service, num int) (service.Task, error) {
	tasks := svc.List()
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("%w: %d", ErrOutOfRange, num)
	}
	return tasks[num-1], nil
}
