package ui

// resultsMsg replaces the results list
type resultsMsg struct {
	results []string
}

// historyMsg replaces the history list
type historyMsg struct {
	entries []string
}

// noticeMsg surfaces a failure without touching either list
type noticeMsg struct {
	err error
}

// searchDoneMsg marks the end of one search cycle
type searchDoneMsg struct {
	err error
}

// historyDoneMsg marks the end of a standalone history load
type historyDoneMsg struct {
	err error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}
