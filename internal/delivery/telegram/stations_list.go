package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

const stationsPerPage = 5

// buildStationsPage renders one page of the catalog. text is empty when page is out of range.
func buildStationsPage(stations []entities.Station, page int) (text string, totalPages int) {
	totalPages = (len(stations) + stationsPerPage - 1) / stationsPerPage
	if page < 0 || page >= totalPages {
		return "", totalPages
	}

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("🚉 駅一覧 (%d / %d)", page+1, totalPages)))

	for i, s := range paginateStations(stations, page, stationsPerPage) {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("%d. ", page*stationsPerPage+i+1)))
		sb.WriteString(bold(formatStationTitle(s)))
		sb.WriteString("\n")
		sb.WriteString(md("読み方: " + s.Reading))
		sb.WriteString("\n")
		sb.WriteString(md("所在地: " + s.Location))
	}

	return sb.String(), totalPages
}

func paginateStations(stations []entities.Station, page, perPage int) []entities.Station {
	start := page * perPage
	if start >= len(stations) {
		return nil
	}

	end := start + perPage
	if end > len(stations) {
		end = len(stations)
	}

	return stations[start:end]
}
