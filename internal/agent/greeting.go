package agent

import (
	"fmt"
	"time"
)

func Greeting(now time.Time, agentName string) string {
	var part string
	switch h := now.Hour(); {
	case h >= 1 && h < 12:
		part = "Good morning"
	case h >= 12 && h < 18:
		part = "Good afternoon"
	default:
		part = "Good evening"
	}
	return fmt.Sprintf("%s! I'm %s, a restaurant booking chatbot. Feel free to ask me anything, type 'help' to know more about me or type 'exit' when you're ready to leave.", part, agentName)
}
