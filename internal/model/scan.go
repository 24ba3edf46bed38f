package model

import "time"

// ScanRequest is the ephemeral input to one scan: a platform plus a profile
// handle or URL typed by the user.
type ScanRequest struct {
	Platform   Platform `json:"platform"`
	Identifier string   `json:"profileUrl"`
}

// Details carries the five secondary signals shown alongside a verdict.
// Each value is an opaque display string supplied (or synthesized) by the
// classifier.
type Details struct {
	AccountAge      string `json:"accountAge"`
	FollowerRatio   string `json:"followerRatio"`
	BioSentiment    string `json:"bioSentiment"`
	ProfilePicture  string `json:"profilePicture"`
	PostingActivity string `json:"postingActivity"`
}

// ProfileData is optional profile metadata returned by the classifier or
// gathered by the page probe. Display only; no invariants.
type ProfileData struct {
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"profile_pic_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Followers int    `json:"followers,omitempty"`
	Following int    `json:"following,omitempty"`
	Posts     int    `json:"posts_count,omitempty"`
	Verified  bool   `json:"verified,omitempty"`
}

// Verdict is what a classifier returns for one profile. The scan session
// turns it into a ScanResult by attaching identity and a timestamp.
type Verdict struct {
	IsFake         bool
	Confidence     int // percentage, 0-100 inclusive
	AccountStatus  string
	PredictedClass string
	Details        Details
	ProfileData    *ProfileData
}

// ScanResult is the terminal, successful outcome of exactly one scan.
// Failed scans never produce one.
type ScanResult struct {
	ID             string       `json:"id"`
	Platform       Platform     `json:"platform"`
	URL            string       `json:"url"`
	IsFake         bool         `json:"isFake"`
	Confidence     int          `json:"confidence"`
	AccountStatus  string       `json:"accountStatus,omitempty"`
	PredictedClass string       `json:"predictedClass,omitempty"`
	Details        Details      `json:"details"`
	ProfileData    *ProfileData `json:"profileData,omitempty"`
	Timestamp      time.Time    `json:"timestamp"`
}
