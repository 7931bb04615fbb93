package main

import (
	"github.com/Amala4/Chat-App/cmd/app"
)

func main() {
	app.GetApp().LetsGo()
}
