// Package service defines the view-agnostic contract for task operations.
package service

// Service defines the operations a view layer may invoke on a task list.
// Views never import a concrete store; they only depend on this interface.
type Service interface {
	// Add creates a task at the end of the list and returns it.
	// Title and description must be non-empty.
	Add(title, description string) (Task, error)

	// ToggleComplete flips the completion flag of the task with the given ID.
	ToggleComplete(id string) error

	// Edit replaces title, description and completion of the task whose ID
	// matches updated.ID.
	Edit(updated Task) error

	// Delete removes the task with the given ID. Remaining tasks keep their order.
	Delete(id string) error

	// Get returns the task with the given ID.
	Get(id string) (Task, error)

	// List returns a snapshot of all tasks in insertion order.
	List() []Task

	// Counts returns how many tasks are open and how many are complete.
	Counts() (open, done int)
}
