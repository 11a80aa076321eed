package entity

import "time"

// SharePayloadType tags payloads describing a shared domain profile.
const SharePayloadType = "domain-profile"

// SharePayload is the public view of a domain profile handed out by share links
// and QR codes. It carries no private data such as email.
type SharePayload struct {
	Type             string    `json:"type"`
	ShareSlug        string    `json:"shareSlug"`
	DomainKey        string    `json:"domainKey"`
	DisplayName      string    `json:"displayName"`
	PlatformUsername string    `json:"platformUsername"`
	ShareURL         string    `json:"shareUrl"`
	Timestamp        time.Time `json:"timestamp"`
}
