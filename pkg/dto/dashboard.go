package dto

type DashboardResponse struct {
	ProjectCount   int                `json:"project_count"`
	UnreadMessages int                `json:"unread_messages"`
	MediaCount     int                `json:"media_count"`
	UserCount      int                `json:"user_count"`
	RecentActivity []AuditLogResponse `json:"recent_activity"`
}
