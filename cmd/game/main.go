package main

import (
	"log"

	"github.com/Garsondee/Gem-Rush/internal/app"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	ebiten.SetWindowTitle("Gem Rush")
	ebiten.SetWindowSize(560, 616)
	if err := ebiten.RunGame(app.New()); err != nil {
		log.Fatal(err)
	}
}
