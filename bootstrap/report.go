package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/va6996/mcpchat/config"
	"github.com/va6996/mcpchat/console"
)

var keyURLs = []struct{ label, url string }{
	{"Groq", "https://console.groq.com"},
	{"Weather", "https://openweathermap.org/api"},
	{"News", "https://newsapi.org"},
}

// ReportConfigError prints a configuration failure. Missing keys are listed
// all together.
func ReportConfigError(out *console.Console, err error) {
	var missing *config.MissingKeysError
	if !errors.As(err, &missing) {
		out.Panel("Configuration Error", "❌ "+err.Error(), console.StyleError)
		return
	}

	var b strings.Builder
	b.WriteString("❌ Missing API Keys:\n\n")
	for _, key := range missing.Keys {
		fmt.Fprintf(&b, "• %s\n", key)
	}
	b.WriteString("\nAdd them to your .env file!\n\nGet free keys at:\n")
	for _, k := range keyURLs {
		fmt.Fprintf(&b, "• %s: %s\n", k.label, k.url)
	}
	out.Panel("Configuration Error", b.String(), console.StyleError)
}

// ReportSetupError prints a startup failure with a hint about the tool
// providers.
func ReportSetupError(out *console.Console, err error) {
	out.Error("Failed to initialize MCP client: %v", err)
	out.Hint("Could not connect to a tool server. Check that the weather and news servers " +
		"can be started (see SERVER_COMMAND) and that their API keys are valid.")
}

// ReportReady prints the welcome panel.
func ReportReady(out *console.Console) {
	out.Panel("Ready to Chat", "🤖 MCP Agent Ready!\n\n"+
		"Try these commands:\n"+
		"• 'What's the weather in London?'\n"+
		"• 'Show me the latest news about AI'\n"+
		"• 'Get the weather for Tokyo and find news about space exploration'\n\n"+
		"Type 'quit' to exit.", console.StyleSuccess)
}

// ReportInitializing prints the panel shown before providers are launched.
func ReportInitializing(out *console.Console) {
	out.Panel("Initializing MCP", "🚀 MCP Chat Client 🚀\n\n"+
		"Both servers will be launched automatically via stdio.\n"+
		"• Weather Server\n"+
		"• News Server", console.StyleInfo)
}
