package transfer

type PinterestTokenResponse struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	TokenType             string `json:"token_type"`
	ExpiresIn             int    `json:"expires_in"`
	RefreshTokenExpiresIn int    `json:"refresh_token_expires_in"`
	Scope                 string `json:"scope"`
}

type PinterestUserInfo struct {
	Username         string `json:"username"`
	ID               string `json:"id"`
	ProfileImage     string `json:"profile_image"`
	AccountType      string `json:"account_type"`
	BusinessName     string `json:"business_name"`
	MonthlyViews     int64  `json:"monthly_views"`
	FollowerCount    int64  `json:"follower_count"`
	WebsiteURL       string `json:"website_url"`
	BoardCount       int64  `json:"board_count"`
	PinCount         int64  `json:"pin_count"`
	FollowingCount   int64  `json:"following_count"`
	AboutDescription string `json:"about"`
}

type PinCreateRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	BoardID     string             `json:"board_id"`
	Link        string             `json:"link,omitempty"`
	MediaSource PinterestMediaSource `json:"media_source"`
}

type PinterestMediaSource struct {
	SourceType string `json:"source_type"`
	URL        string `json:"url"`
}

type PinCreateResponse struct {
	ID      string `json:"id"`
	BoardID string `json:"board_id"`
}

type PinterestErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
