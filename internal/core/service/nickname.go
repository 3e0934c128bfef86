package service

import (
	"fmt"
	"math/rand/v2"
)

var (
	nicknameAdjectives = []string{
		"clever", "jolly", "brave", "sly", "gentle", "swift", "quiet", "bold",
		"witty", "calm", "eager", "lucky", "mighty", "nimble", "proud", "sunny",
	}
	nicknameNouns = []string{
		"panda", "fox", "raccoon", "koala", "lion", "otter", "falcon", "badger",
		"heron", "lynx", "walrus", "gecko", "bison", "marmot", "puffin", "yak",
	}
)

// generateNickname returns a nickname in the form adjective_noun_NNN.
func generateNickname() string {
	return fmt.Sprintf("%s_%s_%03d",
		nicknameAdjectives[rand.IntN(len(nicknameAdjectives))],
		nicknameNouns[rand.IntN(len(nicknameNouns))],
		rand.IntN(1000),
	)
}
