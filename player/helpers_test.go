package player

import (
	"github.com/launchdarkly/http-client-tests/httpfile"

	"github.com/fatih/color"
)

func requestNamed(name string) httpfile.Request {
	return httpfile.Request{Name: name, Method: "GET", URL: "http://localhost"}
}

func withoutColor(action func()) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()
	action()
}
