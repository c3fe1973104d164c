package dto

// VideoDescriptionsRequest asks for full descriptions of up to 50 videos
type VideoDescriptionsRequest struct {
	VideoIDs []string `json:"video_ids" binding:"required"`
}

// VideoDescription holds the description text of one video
type VideoDescription struct {
	Description string `json:"description"`
}

// VideoDescriptionsResponse maps video id to its description
type VideoDescriptionsResponse struct {
	Descriptions map[string]VideoDescription `json:"descriptions"`
}

// ChannelSubscribersRequest asks for subscriber counts of up to 50 channels
type ChannelSubscribersRequest struct {
	ChannelIDs []string `json:"channel_ids" binding:"required"`
}

// ChannelSubscribersResponse maps channel id to its subscriber count.
// A count of -1 means the channel hides its subscriber count.
type ChannelSubscribersResponse struct {
	Subscribers map[string]int64 `json:"subscribers"`
}
