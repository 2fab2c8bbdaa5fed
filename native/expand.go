package native

// templateEngine scans replacement templates for capture references. It is
// the compiled matcher for `\$(\$)?(?:\{([^{}]*)\})?`: group 1 captures the
// escape form $$, group 2 the braced name or index. The step function below
// is this compiler's own output for that pattern, checked in so the runtime
// does not depend on the compile-time packages.
var templateEngine = NewEngine(EngineConfig{
	Step:          templateStep,
	NamedGroups:   map[string]int{},
	CaptureCount:  3,
	LiteralPrefix: "$",
})

func templateStep(chars *Advancer, captures *VectorMap) bool {
	character := chars.Advance()
	capture0Start := character.Index()
	if !character.HasCurrent() {
		return false
	}
	if character.Rune() != 36 {
		return false
	}
	character = chars.Advance()
	{
		matchCount := 0
		for character.HasCurrent() {
			{
				capture1Start := character.Index()
				if !character.HasCurrent() {
					break
				}
				if character.Rune() != 36 {
					break
				}
				character = chars.Advance()
				captures.Insert(1, Location{Start: capture1Start, End: character.Index()})
			}
			matchCount++
			if matchCount == 1 {
				break
			}
		}
		if matchCount < 0 {
			return false
		}
	}
	{
		matchCount := 0
		for character.HasCurrent() {
			if !character.HasCurrent() {
				break
			}
			if character.Rune() != 123 {
				break
			}
			character = chars.Advance()
			{
				capture2Start := character.Index()
				{
					matchCount := 0
					for character.HasCurrent() {
						if !character.HasCurrent() {
							break
						}
						if !(character.Rune() >= 0 && character.Rune() <= 122 || character.Rune() == 124 || character.Rune() >= 126 && character.Rune() <= 1114111) {
							break
						}
						character = chars.Advance()
						matchCount++
					}
					if matchCount < 0 {
						break
					}
				}
				captures.Insert(2, Location{Start: capture2Start, End: character.Index()})
			}
			if !character.HasCurrent() {
				break
			}
			if character.Rune() != 125 {
				break
			}
			character = chars.Advance()
			matchCount++
			if matchCount == 1 {
				break
			}
		}
		if matchCount < 0 {
			return false
		}
	}
	captures.Insert(0, Location{Start: capture0Start, End: character.Index()})
	return true
}
