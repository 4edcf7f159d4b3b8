package reco

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrMissingTree is returned when an input table is not present in the file.
type ErrMissingTree struct {
	Filename string
	TreeName string
}

func (e *ErrMissingTree) Error() string {
	return fmt.Sprintf("tree %q not found in %q", e.TreeName, e.Filename)
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error {
	return e.Err
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error {
	return e.Err
}

// ErrLayoutOverlap is returned when two role ranges of a layout share ids.
type ErrLayoutOverlap struct {
	Layout string
	First  RoleRange
	Second RoleRange
}

func (e *ErrLayoutOverlap) Error() string {
	return fmt.Sprintf("layout %q: range %v overlaps %v", e.Layout, e.First, e.Second)
}
