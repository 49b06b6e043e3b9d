package model

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Principal is the authenticated user identity attached to the session.
type Principal struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Status struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Priority struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TaxonomyEntity is the common admin-facing shape of tags, statuses and
// priorities. Color is only meaningful for tags.
type TaxonomyEntity struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Issue struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Author      *Principal `json:"author,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Tags        []Tag      `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (i Issue) ResourceID() int { return i.ID }

func (i Issue) ResourceAuthorID() int {
	if i.Author == nil {
		return 0
	}
	return i.Author.ID
}

type Comment struct {
	ID        int        `json:"id"`
	IssueID   int        `json:"issue_id"`
	Author    *Principal `json:"author,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c Comment) ResourceID() int { return c.ID }

func (c Comment) ResourceAuthorID() int {
	if c.Author == nil {
		return 0
	}
	return c.Author.ID
}

// Page is one fetched window of a server-owned collection plus its total
// count. It is replaced wholesale on every successful fetch.
type Page[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"total_count"`
	Skip       int `json:"skip"`
	Limit      int `json:"limit"`
}

// AffectedIssue identifies an issue still referencing a taxonomy entity
// whose deletion was refused.
type AffectedIssue struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
