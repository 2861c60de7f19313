// internal/reader/blocks.go
package reader

import (
	"fmt"
	"sort"

	"github.com/tamzrod/modbus-sensor-reader/internal/device"
	"github.com/tamzrod/modbus-sensor-reader/internal/regcodec"
)

// Modbus read limits: 2000 bits per discrete read, 125 registers per
// register read. A block never exceeds the limit of its category.
const (
	maxDiscreteSpan = 2000
	maxRegisterSpan = 125
)

// BuildBlocks computes the per-category read plan for a definition:
// sensors sorted by address and partitioned into maximal contiguous
// spans. The plan is computed once and never changes afterwards.
func BuildBlocks(def *device.Definition, codec regcodec.Codec) (map[device.Category][]Block, error) {
	plan := make(map[device.Category][]Block, len(device.Categories))

	for _, cat := range device.Categories {
		blocks, err := buildCategory(cat, def.Sensors(cat), codec)
		if err != nil {
			return nil, err
		}
		plan[cat] = blocks
	}

	return plan, nil
}

func buildCategory(cat device.Category, sensors map[string]device.Sensor, codec regcodec.Codec) ([]Block, error) {
	if len(sensors) == 0 {
		return nil, nil
	}

	maxSpan := uint16(maxRegisterSpan)
	if cat.Discrete() {
		maxSpan = maxDiscreteSpan
	}

	placed := make([]BlockSensor, 0, len(sensors))
	for id, s := range sensors {
		width := uint16(1)
		if !cat.Discrete() {
			w, err := codec.WordCount(s.Type)
			if err != nil {
				return nil, fmt.Errorf("reader: %s sensor %q: %w", cat, id, err)
			}
			width = w
		}
		placed = append(placed, BlockSensor{ID: id, Sensor: s, Width: width})
	}

	// Ascending address; ids break ties so the plan is deterministic.
	sort.Slice(placed, func(i, j int) bool {
		if placed[i].Sensor.Address != placed[j].Sensor.Address {
			return placed[i].Sensor.Address < placed[j].Sensor.Address
		}
		return placed[i].ID < placed[j].ID
	})

	var blocks []Block
	open := Block{Start: placed[0].Sensor.Address}

	for _, bs := range placed {
		end := open.Start + open.Count

		// A sensor extends the open block iff it starts exactly at the
		// block's current end and the block stays within the max span.
		extends := len(open.Sensors) > 0 &&
			bs.Sensor.Address == end &&
			bs.Sensor.Address+bs.Width-open.Start <= maxSpan

		if len(open.Sensors) > 0 && !extends {
			blocks = append(blocks, open)
			open = Block{Start: bs.Sensor.Address}
		}

		open.Sensors = append(open.Sensors, bs)
		open.Count = bs.Sensor.Address + bs.Width - open.Start
	}

	blocks = append(blocks, open)
	return blocks, nil
}
