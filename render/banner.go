package render

var banner = []string{
	" _____                  _     ___",
	"|  ___|  __ _  ____    / \\   |_ _|",
	"| |_    / _` ||_  /   / _ \\   | |",
	"|  _|  | (_| | / /   / ___ \\  | |",
	"|_|     \\__,_|/___| /_/   \\_\\|___|",
}

const (
	title    = "FazAI"
	subtitle = "system dashboard"
)
