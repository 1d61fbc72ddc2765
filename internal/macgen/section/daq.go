package section

import (
	"github.com/wcsim/macgen/internal/macgen/options"
)

// daqChoice is one concrete point of the acquisition axis.
type daqChoice struct {
	digitizer            string
	trigger              string
	saveFailuresMode     string
	saveFailuresTime     string
	nhitsThreshold       string
	nhitsWindow          string
	localNHitsNeighbours string
	localNHitsThreshold  string
	localNHitsWindow     string
}

// DAQ returns one section per digitizer, trigger and trigger parameter combination.
// Digitizer/trigger pairings that can't work together are left out; the number of
// pairings left out is returned alongside the sections.
func DAQ(o *options.Options) ([]Section, int) {
	var sections []Section
	skipped := 0
	// The failure time only affects names when it can differ between files.
	tagAllTimes := len(o.SaveFailuresTime) > 1
	for _, digitizer := range o.Digitizer {
		for _, trigger := range o.Trigger {
			if !options.CompatibleDAQ(digitizer, trigger) {
				skipped++
				continue
			}
			for _, mode := range o.SaveFailuresMode {
				for _, time := range o.SaveFailuresTime {
					for _, threshold := range o.NHitsThreshold {
						for _, window := range o.NHitsWindow {
							for _, neighbours := range o.LocalNHitsNeighbours {
								for _, localThreshold := range o.LocalNHitsThreshold {
									for _, localWindow := range o.LocalNHitsWindow {
										c := daqChoice{
											digitizer:            digitizer,
											trigger:              trigger,
											saveFailuresMode:     mode,
											saveFailuresTime:     time,
											nhitsThreshold:       threshold,
											nhitsWindow:          window,
											localNHitsNeighbours: neighbours,
											localNHitsThreshold:  localThreshold,
											localNHitsWindow:     localWindow,
										}
										sections = appendUnique(sections, c.section(o.NHitsIgnoreNoise, tagAllTimes))
									}
								}
							}
						}
					}
				}
			}
		}
	}
	return sections, skipped
}

func (c daqChoice) section(adjustForNoise bool, tagTime bool) Section {
	block := []string{
		directive("/DAQ/Digitizer", c.digitizer),
		directive("/DAQ/Trigger", c.trigger),
		directive("/DAQ/TriggerSaveFailures/Mode", c.saveFailuresMode),
		directive("/DAQ/TriggerSaveFailures/TriggerTime", c.saveFailuresTime),
	}
	fragment := c.digitizer + "_" + c.trigger + "_fails" + c.saveFailuresMode
	if c.saveFailuresMode != "0" || tagTime {
		fragment += "_" + c.saveFailuresTime
	}
	if options.IsNHitsTrigger(c.trigger) {
		block = append(block,
			directive("/DAQ/TriggerNHits/Threshold", c.nhitsThreshold),
			directive("/DAQ/TriggerNHits/Window", c.nhitsWindow),
			directive("/DAQ/TriggerNHits/AdjustForNoise", Bool(adjustForNoise)),
		)
		fragment += "_NHits" + c.nhitsThreshold + "_" + c.nhitsWindow
	}
	if options.IsLocalNHitsTrigger(c.trigger) {
		block = append(block,
			directive("/DAQ/TriggerLocalNHits/Neighbours", c.localNHitsNeighbours),
			directive("/DAQ/TriggerLocalNHits/Threshold", c.localNHitsThreshold),
			directive("/DAQ/TriggerLocalNHits/Window", c.localNHitsWindow),
			directive("/DAQ/TriggerLocalNHits/AdjustForNoise", Bool(adjustForNoise)),
		)
		fragment += "_LocalNHits" + c.localNHitsNeighbours + "_" + c.localNHitsThreshold + "_" + c.localNHitsWindow
	}
	return Section{Block: block, Fragment: fragment}
}
