package scenario

import (
	_ "embed"
	"sync"
)

//go:embed consulting.yaml
var consultingYAML []byte

var consulting = sync.OnceValue(func() *Scenario {
	sc, err := Load(consultingYAML)
	if err != nil {
		panic("embedded consulting scenario is invalid: " + err.Error())
	}
	return sc
})

// Consulting returns the bundled consulting-firm scenario.
func Consulting() *Scenario {
	return consulting()
}
