package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/assemblyline/internal/config"
)

func TestRenderPage(t *testing.T) {
	page := renderPage(config.Web{SSHDisplayHost: "play.example.com", SSHPort: "2222"})
	assert.Contains(t, page, "ssh -p 2222 play.example.com")
	assert.NotContains(t, page, "{{.")

	page = renderPage(config.Web{SSHDisplayHost: "play.example.com", SSHPort: "22"})
	assert.Contains(t, page, "<code>ssh play.example.com</code>")
}
