// Package analysis loads an attendance dataset and computes its statistics.
//
// The pipeline runs in order:
//
//	table, err := analysis.LoadDataset(ctx, logger, path)  // NOT_FOUND if path is missing
//	missing := analysis.Preprocess(ctx, logger, table)     // parse dates, count missing cells
//	report, err := analysis.Analyze(ctx, logger, table)    // overall, status and weekday rates
//	heat, err := analysis.Heatmap(table, 20)               // student x date presence matrix
//
// The table is backed by a gota dataframe with every column kept as text.
// Weekday rates are always reported Monday through Friday; a weekday with
// no records has an undefined rate rather than zero.
package analysis
