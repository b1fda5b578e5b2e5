package transfer

type KlaviyoEventRequest struct {
	Data KlaviyoEventData `json:"data"`
}

type KlaviyoEventData struct {
	Type       string                 `json:"type"`
	Attributes KlaviyoEventAttributes `json:"attributes"`
}

type KlaviyoEventAttributes struct {
	Properties map[string]interface{} `json:"properties"`
	Metric     KlaviyoMetric          `json:"metric"`
	Profile    KlaviyoProfile         `json:"profile"`
}

type KlaviyoMetric struct {
	Data KlaviyoMetricData `json:"data"`
}

type KlaviyoMetricData struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

type KlaviyoProfile struct {
	Data KlaviyoProfileData `json:"data"`
}

type KlaviyoProfileData struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}
