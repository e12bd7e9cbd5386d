// Package exporter serializes the pipeline's output tables for
// downstream reporting.
//
// Each table (sensor, wall, box level) flattens to delimited text with
// one header row and one row per record; missing values become empty
// cells. The same tables can be written as a single Excel workbook with
// one sheet per table for analysts who work in spreadsheets.
package exporter
