package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

/*generates per-city weather CSV files in the reference column layout*/

var (
	CityCount = flag.Int("cities", 50, "Number of city files to generate")
	RowCount  = flag.Int("rows", 365, "Number of daily rows per city")
	OutputDir = flag.String("output", "var/data", "Output directory")
	Seed      = flag.Uint64("seed", 1, "PCG seed (same seed, same data)")
)

var cityNames = []string{
	"Springfield", "Riverton", "Lakeview", "Fairfield", "Georgetown",
	"Clinton", "Salem", "Madison", "Ashland", "Oxford",
	"Milton", "Arlington", "Burlington", "Clayton", "Dayton",
	"Franklin", "Greenville", "Hudson", "Jackson", "Kingston",
}

const header = "STATION,NAME,DATE,ELEMENT,TAVG,TMIN,TMAX,PRCP\n"

func cityName(i int) string {
	base := cityNames[i%len(cityNames)]
	if i >= len(cityNames) {
		return fmt.Sprintf("%s %d", base, i/len(cityNames)+1)
	}
	return base
}

func writeCity(rng *rand.Rand, path, city string, rows int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	w.WriteString(header)

	// A per-city climate offset so rankings are not uniform.
	baseTemp := rng.Float64()*40 - 10
	wetness := rng.Float64() * 10

	day := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		date := day.AddDate(0, 0, i).Format("2006-01-02")

		temp := fmt.Sprintf("%.1f", baseTemp+rng.Float64()*15)
		precip := fmt.Sprintf("%.1f", rng.Float64()*wetness)

		// Real station data has gaps; leave some fields blank.
		if rng.IntN(10) == 0 {
			temp = ""
		}
		if rng.IntN(5) == 0 {
			precip = ""
		}

		fmt.Fprintf(w, "GEN%04d,%s,%s,DLY,%s,,,%s\n", i%100, city, date, temp, precip)
	}

	return w.Flush()
}

func main() {
	flag.Parse()

	if err := os.MkdirAll(*OutputDir, 0755); err != nil {
		panic(err)
	}

	rng := rand.New(rand.NewPCG(*Seed, *Seed<<1))
	bar := progressbar.Default(int64(*CityCount), "generating")

	for i := 0; i < *CityCount; i++ {
		city := cityName(i)
		path := filepath.Join(*OutputDir, strings.ReplaceAll(city, " ", "_")+".csv")
		if err := writeCity(rng, path, city, *RowCount); err != nil {
			panic(err)
		}
		bar.Add(1)
	}

	fmt.Printf("wrote %d city files to %s\n", *CityCount, *OutputDir)
}
