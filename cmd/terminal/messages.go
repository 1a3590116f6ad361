package main

// A file was read and became the active document.
type fileLoadedMsg struct {
	path string
	text string
	err  error
}

// Host warning, shown inline.
type warnMsg string

// A review panel was opened; title and body updates follow for the same id.
type panelOpenedMsg struct{ id int64 }

type panelTitleMsg struct {
	id    int64
	title string
}

type panelBodyMsg struct {
	id   int64
	body string
}

// A review invocation returned.
type reviewFinishedMsg struct {
	err error
}
