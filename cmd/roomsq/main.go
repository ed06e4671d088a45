// roomsq answers "which classrooms are open right now" from a snapshot
// file written by roomsd, without touching the network or the database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/schedule"
)

func main() {
	snapshotPath := flag.String("snapshot", "rooms_data.json", "path to the rooms snapshot file")
	filter := flag.String("filter", "", "only show rooms whose location contains this substring")
	dayFlag := flag.String("day", "", "weekday token (M, Tu, W, Th, F, Sa, Su); defaults to today")
	atFlag := flag.String("at", "", "clock time in HHMM (e.g. 1330); defaults to now")
	flag.Parse()

	rooms, err := calendar.Load(*snapshotPath)
	if err != nil {
		log.Fatalf("cannot load snapshot: %v (run roomsd to scrape one)", err)
	}

	cal := calendar.New()
	cal.Restore(rooms)

	now := time.Now()
	day := schedule.WeekdayOf(now)
	at := schedule.FromTime(now)

	if *dayFlag != "" {
		day = schedule.Weekday(*dayFlag)
		if !day.Valid() {
			log.Fatalf("invalid day token %q", *dayFlag)
		}
	}
	if *atFlag != "" {
		v, err := strconv.Atoi(*atFlag)
		if err != nil || v < 0 || v > 2359 || v%100 > 59 {
			log.Fatalf("invalid time %q: want HHMM", *atFlag)
		}
		at = schedule.Minutes(v)
	}

	result := cal.Query(day, at, *filter)
	if len(result.Open) == 0 {
		fmt.Printf("No open rooms on %s at %s.\n", day, at.Clock())
		os.Exit(0)
	}

	fmt.Printf("Open rooms on %s at %s:\n", day, at.Clock())
	for _, room := range result.Open {
		fmt.Printf("  %s: %s\n", room.Location, room.NextOccupied())
	}

	fmt.Println("Best rooms:")
	for _, location := range result.Best {
		fmt.Printf("  %s\n", location)
	}
}
