package config

import (
	"fmt"
	"os"
)

// Template returns a commented starter configuration that loads as is.
func Template() string {
	return starterTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template()), 0o600)
}

const starterTemplate = `# minegen run configuration.

# 0 draws a fresh seed for every run; the chosen seed is logged.
seed = 0
# wkt | postgis | sqlite
output_type = "wkt"

# Bounds are sampled uniformly in [min, max) and truncated.
[floors]
min = 2
max = 6

[shapes]
min = 10
max = 40

[drillholes]
min = 20
max = 80
# Exactly one of lengths_file and length_distribution.
# lengths_file = "drill_lengths.txt"
length_distribution = "lognorm(0.5, 0, 30)"
interval_length = 10

[grid]
columns = 100
rows = 45
cell_width = 4
cell_height = 3
level_padding = 25
min_endpoints = 10
max_endpoints = 20

# Shape extents in meters, as name(shape..., loc, scale).
[shape_sizes]
x = "uniform(10, 30)"
y = "uniform(10, 30)"
z = "uniform(5, 15)"
block_size = 5
`
