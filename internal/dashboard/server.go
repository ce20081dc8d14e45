package dashboard

import (
	"bufio"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/rs/cors"

	"github.com/hudsonmp/project-finder/internal/domain"
)

// NewHandler serves the charts page and a JSON view of the current
// snapshot. CORS is open so a separate frontend can read /api/posts.
func NewHandler(dataFile string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		posts := loadData(dataFile)

		// 1. Subreddit Dominance
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Subreddit Dominance"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)

		subCounts := make(map[string]int)
		for _, p := range posts {
			subCounts[p.Subreddit]++
		}

		var pieItems []opts.PieData
		for k, v := range subCounts {
			pieItems = append(pieItems, opts.PieData{Name: k, Value: v})
		}
		pie.AddSeries("Posts", pieItems)

		// 2. Projects vs Discussion per subreddit
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Project Posts by Subreddit"}))

		projCounts := make(map[string]int)
		for _, p := range posts {
			if p.IsProject {
				projCounts[p.Subreddit]++
			}
		}

		var barX []string
		var projY, otherY []opts.BarData
		for sub, total := range subCounts {
			barX = append(barX, sub)
			projY = append(projY, opts.BarData{Value: projCounts[sub]})
			otherY = append(otherY, opts.BarData{Value: total - projCounts[sub]})
		}
		bar.SetXAxis(barX).
			AddSeries("Projects", projY).
			AddSeries("Discussion", otherY)

		pie.Render(w)
		bar.Render(w)
	})

	mux.HandleFunc("/api/posts", func(w http.ResponseWriter, r *http.Request) {
		posts := loadData(dataFile)
		if posts == nil {
			posts = []domain.Post{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(posts)
	})

	return cors.Default().Handler(mux)
}

func StartServer(dataFile string, port string) error {
	return http.ListenAndServe(":"+port, NewHandler(dataFile))
}

func loadData(path string) []domain.Post {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var posts []domain.Post
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var p domain.Post
		if err := json.Unmarshal(scanner.Bytes(), &p); err == nil {
			posts = append(posts, p)
		}
	}
	return posts
}
