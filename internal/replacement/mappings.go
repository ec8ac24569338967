package replacement

// DefaultMappings returns the carrier-to-catalog description table in the
// order it is applied.
func DefaultMappings() []Mapping {
	return []Mapping{
		{Patterns: []string{"Detach & Reset Continuous ridge vent - shingle-over", "Install Continuous ridge vent - shingle-over style"}, Canonical: "R&R Continuous ridge vent - shingle-over style"},
		{Patterns: []string{"Detach & Reset Continuous ridge vent - aluminum", "Install Continuous ridge vent - aluminum"}, Canonical: "R&R Continuous ridge vent - aluminum"},
		{Patterns: []string{"Detach & Reset Roof vent - turtle type - Plastic", "Install Roof vent - turtle type - Plastic"}, Canonical: "R&R Roof vent - turtle type - Plastic"},
		{Patterns: []string{"Detach & Reset Roof vent - turtle type - Metal", "Install Roof vent - turtle type - Metal"}, Canonical: "R&R Roof vent - turtle type - Metal"},
		{Patterns: []string{"Detach & Reset Roof vent - off ridge type - 8'", "Install Roof vent - off ridge type - 8'"}, Canonical: "R&R Roof vent - off ridge type - 8'"},
		{Patterns: []string{"Detach & Reset Roof vent - off ridge type - 6'", "Install Roof vent - off ridge type - 6'"}, Canonical: "R&R Roof vent - off ridge type - 6'"},
		{Patterns: []string{"Detach & Reset Roof vent - off ridge type - 4'", "Install Roof vent - off ridge type - 4'"}, Canonical: "R&R Roof vent - off ridge type - 4'"},
		{Patterns: []string{"Detach & Reset Roof vent - off ridge type - 2'", "Install Roof vent - off ridge type - 2'"}, Canonical: "R&R Roof vent - off ridge type - 2'"},
		{Patterns: []string{"Detach & Reset Roof vent - dormer type - Metal", "Install Roof vent - dormer type - Metal"}, Canonical: "R&R Roof vent - dormer type - Metal"},
		{Patterns: []string{"Detach & Reset Roof vent - turbine type", "Install Roof vent - turbine type"}, Canonical: "R&R Roof vent - turbine type"},
		{Patterns: []string{"Detach & Reset Roof mount power attic vent - Large", "Install Roof mount power attic vent - Large"}, Canonical: "R&R Roof mount power attic vent - Large"},
		{Patterns: []string{"Detach & Reset Roof mount power attic vent", "Install Roof mount power attic vent"}, Canonical: "R&R Roof mount power attic vent"},
		{Patterns: []string{`Detach & Reset Exhaust cap - through roof - up to 4"`, `Install Exhaust cap - through roof - up to 4"`}, Canonical: `R&R Exhaust cap - through roof - up to 4"`},
		{Patterns: []string{`Detach & Reset Exhaust cap - through roof - 6" to 8"`, `Install Exhaust cap - through roof - 6" to 8"`}, Canonical: `R&R Exhaust cap - through roof - 6" to 8"`},
		{Patterns: []string{"Detach & Reset Power attic vent cover only - metal", "Install Power attic vent cover only - metal"}, Canonical: "R&R Power attic vent cover only - metal"},
		{Patterns: []string{"Detach & Reset Power attic vent cover only - plastic", "Install Power attic vent cover only - plastic"}, Canonical: "R&R Power attic vent cover only - plastic"},
		{Patterns: []string{"Install Counterflashing - Apron flashing"}, Canonical: "R&R Counterflashing - Apron flashing"},
		{Patterns: []string{"Install Valley metal"}, Canonical: "R&R Valley metal"},
		{Patterns: []string{"Install Valley metal - (W) profile"}, Canonical: "R&R Valley metal - (W) profile"},
		{Patterns: []string{`Install Furnace vent - rain cap and storm collar, 6"`}, Canonical: `R&R Furnace vent - rain cap and storm collar, 6"`},
		{Patterns: []string{"Install Flashing - rain diverter"}, Canonical: "R&R Flashing - rain diverter"},
		{Patterns: []string{"Install Flashing - kick-out diverter"}, Canonical: "R&R Flashing - kick-out diverter"},
		{Patterns: []string{"Install Flashing - pipe jack - copper"}, Canonical: "R&R Flashing - pipe jack - copper"},
		{Patterns: []string{"Install Flashing - pipe jack - lead"}, Canonical: "R&R Flashing - pipe jack - lead"},
		{Patterns: []string{`Install Flashing - pipe jack - 6"`}, Canonical: `R&R Flashing - pipe jack - 6"`},
		{Patterns: []string{`Install Flashing - pipe jack - 8"`}, Canonical: `R&R Flashing - pipe jack - 8"`},
		{Patterns: []string{"Install Flashing - pipe jack - split boot"}, Canonical: "R&R Flashing - pipe jack - split boot"},
		{Patterns: []string{"Install Flashing - pipe jack"}, Canonical: "R&R Flashing - pipe jack"},
		{Patterns: []string{`Install Rain cap - 10"`}, Canonical: `R&R Rain cap - 10"`},
		{Patterns: []string{`Install Rain cap - 12"`}, Canonical: `R&R Rain cap - 12"`},
		{Patterns: []string{`Install Rain cap - 4" to 5"`}, Canonical: `R&R Rain cap - 4" to 5"`},
		{Patterns: []string{`Install Rain cap - 6"`}, Canonical: `R&R Rain cap - 6"`},
		{Patterns: []string{`Install Rain cap - 8"`}, Canonical: `R&R Rain cap - 8"`},
		{Patterns: []string{"Install Step flashing"}, Canonical: "Step flashing"},
		{Patterns: []string{"Install Aluminum sidewall/endwall flashing - mill"}, Canonical: "Aluminum sidewall/endwall flashing - mill finish"},
		{Patterns: []string{`Install Flashing, 14" wide`}, Canonical: `R&R Flashing, 14" wide`},
		{Patterns: []string{`Install Flashing, 14" wide - copper`}, Canonical: `R&R Flashing, 14" wide - copper`},
		{Patterns: []string{`Install Flashing, 20" wide`}, Canonical: `R&R Flashing, 20" wide`},
		{Patterns: []string{"Install Evaporative cooler - Detach & reset"}, Canonical: "Evaporative cooler - Detach & reset"},
		{Patterns: []string{`Install Chimney flashing - small (24" x 24")`}, Canonical: `R&R Chimney flashing - small (24" x 24")`},
		{Patterns: []string{`Install Chimney flashing - average (32" x 36")`}, Canonical: `R&R Chimney flashing - average (32" x 36")`},
		{Patterns: []string{`Install Chimney flashing - large (32" x 60")`}, Canonical: `R&R Chimney flashing - large (32" x 60")`},
		{Patterns: []string{"Install Saddle or cricket - up to 25 SF"}, Canonical: "Saddle or cricket - up to 25 SF"},
		{Patterns: []string{"Install Saddle or cricket - 26 to 50 SF"}, Canonical: "Saddle or cricket - 26 to 50 SF"},
		{Patterns: []string{"Install Skylight flashing kit - dome"}, Canonical: "R&R Skylight flashing kit - dome"},
		{Patterns: []string{"Install Skylight flashing kit - dome - High grade"}, Canonical: "R&R Skylight flashing kit - dome - High grade"},
		{Patterns: []string{"Install Skylight flashing kit - dome - Large - High"}, Canonical: "R&R Skylight flashing kit - dome - Large - High grade"},
		{Patterns: []string{"Install Skylight flashing kit - dome - Large"}, Canonical: "R&R Skylight flashing kit - dome - Large"},
		{Patterns: []string{"Install Roof window step flashing kit"}, Canonical: "R&R Roof window step flashing kit"},
		{Patterns: []string{"Install Roof window step flashing kit - Large"}, Canonical: "R&R Roof window step flashing kit - Large"},
		{Patterns: []string{"Install Gutter / downspout - Detach & reset"}, Canonical: "Gutter / downspout - Detach & reset"},
		{Patterns: []string{"Install Drip edge/gutter apron"}, Canonical: "R&R Drip edge/gutter apron"},
		{Patterns: []string{"Install Drip edge"}, Canonical: "R&R Drip edge"},
		{Patterns: []string{"Install Drip edge - copper"}, Canonical: "R&R Drip edge - copper"},
	}
}
