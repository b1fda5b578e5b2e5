package transfer

import "github.com/golang-jwt/jwt/v5"

type ContentCreation struct {
	Platform         string
	Pillar           string
	ContentType      string
	Caption          string
	Title            string
	ScheduledTime    string
	SelectedAccounts string
	ProductID        string
}

type SettingsUpdate struct {
	Platform       string `json:"platform"`
	WeeklyQuota    int    `json:"weekly_quota"`
	CountScheduled *bool  `json:"count_scheduled"`
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
