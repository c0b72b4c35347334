// Command handplot-gen emits demo entry data as CSV on stdout, in the
// format the handplot viewer ingests:
//
//	handplot-gen -entries 40 | handplot
//	handplot-gen -stacks 3 > demo.csv
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: generate demo chart entry data as CSV

Usage:

 %[1]s > file

OR

 %[1]s | handplot

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	entries := flag.Int("entries", 30, "number of entries per data set")
	sets := flag.Int("sets", 2, "number of data sets")
	stacks := flag.Int("stacks", 0, "stack components per entry; 0 emits plain entries")
	bubbles := flag.Bool("bubbles", false, "attach bubble sizes to each entry")
	sparse := flag.Float64("sparse", 0, "probability in [0,1] that any cell is a hole")
	seed := flag.Int64("seed", 0, "random seed; 0 seeds from entropy")
	flag.Usage = usage
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	if *seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	headings := make([]string, 1, *sets+1)
	headings[0] = "x"
	for i := 0; i < *sets; i++ {
		headings = append(headings, fmt.Sprintf("series-%c", 'a'+i))
	}
	fmt.Println(strings.Join(headings, ", "))

	walk := make([]float64, *sets)
	for i := range walk {
		walk[i] = rng.Float64() * 10
	}
	for n := 0; n < *entries; n++ {
		row := make([]string, 1, *sets+1)
		row[0] = strconv.Itoa(n)
		for s := 0; s < *sets; s++ {
			if *sparse > 0 && rng.Float64() < *sparse {
				row = append(row, "")
				continue
			}
			walk[s] += rng.NormFloat64()
			row = append(row, cell(rng, walk[s], *stacks, *bubbles))
		}
		fmt.Println(strings.Join(row, ", "))
	}
}

func cell(rng *rand.Rand, value float64, stacks int, bubbles bool) string {
	if stacks > 0 {
		parts := make([]string, stacks)
		for i := range parts {
			component := value/float64(stacks) + rng.NormFloat64()
			parts[i] = strconv.FormatFloat(component, 'f', 3, 64)
		}
		return strings.Join(parts, ";")
	}
	out := strconv.FormatFloat(value, 'f', 3, 64)
	if bubbles {
		out += "@" + strconv.FormatFloat(1+rng.Float64()*4, 'f', 2, 64)
	}
	return out
}
