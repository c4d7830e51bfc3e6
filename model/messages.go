package model

// AnalysisCompleteMsg carries the terminal result of one analyze request
type AnalysisCompleteMsg struct {
	RequestID string
	Payload   AIPayload
}

// CaptureSource identifies the capture modality that produced text
type CaptureSource string

const (
	CaptureCamera CaptureSource = "camera"
	CaptureVoice  CaptureSource = "voice"
)

// CaptureCompleteMsg is delivered when a capture adapter produced text
type CaptureCompleteMsg struct {
	Source CaptureSource
	Token  int
	Text   string
}

// CaptureFailedMsg is delivered when a capture was cancelled or could not produce text
type CaptureFailedMsg struct {
	Source CaptureSource
	Token  int
	Err    error
}

// TransitionDoneMsg ends the landing to chat handoff window
type TransitionDoneMsg struct{}
