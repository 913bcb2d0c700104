package pipeline

// View то, что нужно UI для отрисовки. Считается чистой функцией от Snapshot.
type View struct {
	State       string `json:"state"`
	Status      string `json:"status"`
	Busy        bool   `json:"busy"`
	CanUpload   bool   `json:"canUpload"`
	CanStart    bool   `json:"canStart"`
	CanReset    bool   `json:"canReset"`
	CanDownload bool   `json:"canDownload"`
	SourceURL   string `json:"sourceUrl,omitempty"`
	ResultURL   string `json:"resultUrl,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorKind   string `json:"errorKind,omitempty"`
}

// Render строит View из снимка состояния. Состояние не меняет.
func Render(s Snapshot) View {
	v := View{
		State:     s.State.String(),
		Status:    statusText(s.State),
		Busy:      s.State == Processing,
		CanUpload: true,
		CanStart:  (s.State == Loaded || s.State == Failed) && s.Source != nil,
		CanReset:  s.State != Idle || s.Err != nil,
	}
	if s.Source != nil {
		v.SourceURL = s.Source.DataURL()
	}
	// Результат показываем только в Succeeded
	if s.State == Succeeded && s.Result != nil {
		v.ResultURL = s.Result.DataURL()
		v.CanDownload = true
	}
	if s.Err != nil {
		v.Error = s.Err.Message
		v.ErrorKind = s.Err.Kind.String()
	}
	return v
}

func statusText(s State) string {
	switch s {
	case Idle:
		return "Drop an image here or choose a file"
	case Loaded:
		return "Ready to remove the background"
	case Processing:
		return "Removing background..."
	case Succeeded:
		return "Background removed"
	case Failed:
		return "Background removal failed"
	default:
		return ""
	}
}
