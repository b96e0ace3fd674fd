package models

// Group is a chat group. Lifecycle is admin-managed.
type Group struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedBy int    `json:"created_by"`
}

// GroupMember links a user to a group. The existence of this record is the
// sole authorization signal for group chat access (admins bypass it for
// reads).
type GroupMember struct {
	GroupID int `json:"group_id"`
	UserID  int `json:"user_id"`
}
