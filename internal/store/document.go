package store

import "task-service/internal/models"

// Document is the shared JSON document acting as the database. Every
// collection the service owns lives here under a named key.
type Document struct {
	Users         []models.User         `json:"users"`
	Tasks         []models.Task         `json:"tasks"`
	Groups        []models.Group        `json:"groups"`
	GroupMembers  []models.GroupMember  `json:"group_members"`
	Messages      []models.ChatMessage  `json:"messages"`
	Notifications []models.Notification `json:"notifications"`
	ActivityLogs  []models.ActivityLog  `json:"activity_logs"`
}

// NextUserID returns the next sequential user id.
func (d *Document) NextUserID() int {
	max := 0
	for _, u := range d.Users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

// NextTaskID returns the next sequential task id.
func (d *Document) NextTaskID() int {
	max := 0
	for _, t := range d.Tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// NextGroupID returns the next sequential group id.
func (d *Document) NextGroupID() int {
	max := 0
	for _, g := range d.Groups {
		if g.ID > max {
			max = g.ID
		}
	}
	return max + 1
}

// NextMessageID returns the next sequential message id. Computed under the
// store write lock, so ids stay strictly increasing even when posts race.
func (d *Document) NextMessageID() int {
	max := 0
	for _, m := range d.Messages {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}

// NextNotificationID returns the next sequential notification id.
func (d *Document) NextNotificationID() int {
	max := 0
	for _, n := range d.Notifications {
		if n.ID > max {
			max = n.ID
		}
	}
	return max + 1
}

// NextActivityID returns the next sequential activity log id.
func (d *Document) NextActivityID() int {
	max := 0
	for _, a := range d.ActivityLogs {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}
