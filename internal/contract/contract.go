// Package contract pins the report's JSON shape. Two independent
// renderers (the web page and the e-ink template) consume data.json by
// field name, so every generated report is vetted against this CUE
// schema before it is published.
package contract

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// reportSchema is the compatibility contract for data.json. Adding an
// optional field is safe; renaming or retyping anything here breaks the
// renderers and must be coordinated with them.
const reportSchema = `
#Trend: "gaining" | "losing" | "stable"

#DailyCount: {
	weekday: string
	display: string
	count:   int & >=0
}

#WeightSample: {
	display: string
	weight:  number & >0
}

#WeightSummary: {
	average: number & >0
	min:     number & >0
	max:     number & >0
	trend:   #Trend
	change:  number
}

#PeakHour: {
	hour:    int & >=0 & <=23
	count:   int & >=0
	display: string
}

#BusiestDate: {
	day_name:   string
	display:    string
	count:      int & >=0
	is_weekend: bool
}

#Report: {
	cat_name:     string & !=""
	robot_name:   string
	generated_at: string & !=""
	date_range: {
		start:   string
		end:     string
		display: string
	}
	personality_traits: [...string]
	total_visits:   int & >=0
	visits_per_day: number & >=0
	chart_data: [...#DailyCount]
	weight_history: [...#WeightSample]
	timing: {
		longest_gap:  string & !=""
		shortest_gap: string & !=""
	}
	weight:       #WeightSummary | null
	peak_hour:    #PeakHour | null
	busiest_date: #BusiestDate | null
	robot_stats: {
		clean_cycles:  int & >=0
		interruptions: int & >=0
	}
	output: {
		oz:  number & >=0
		lbs: number & >=0
	}
}

report: #Report
`

// Validate checks a marshalled report against the contract. A nil error
// means every renderer-visible field is present with the right type.
func Validate(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(reportSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("contract: compiling schema: %w", err)
	}

	val := ctx.CompileBytes(data)
	if err := val.Err(); err != nil {
		return fmt.Errorf("contract: parsing report JSON: %w", err)
	}

	unified := schema.FillPath(cue.ParsePath("report"), val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("contract: report violates output contract: %w", err)
	}
	return nil
}
