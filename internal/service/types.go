// Package service defines the view-agnostic contract for task operations.
package service

// Task represents a single to-do item.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	IsComplete  bool   `json:"is_complete" yaml:"is_complete"`
}
