package gfdf

import "time"

type Notification struct {
	TargetUser string
	Type       NotificationType

	Title   string
	Message string
}

type NotificationType string

const (
	NotificationTypePush NotificationType = "Push"
)

type UserPushNotificationTarget struct {
	UserID                string    `bson:"userid"`
	PushNotificationToken string    `bson:"pushnotificationtoken"`
	ModificationDateTime  time.Time `bson:"modificationdatetime"`
}
