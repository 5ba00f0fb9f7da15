// Package lua runs macro scripts for date fields in a sandboxed gopher-lua
// state.
//
// A script binds trigger characters to functions:
//
//	define("w", function(cur, today)
//	  -- next Monday after today
//	  local ahead = (8 - today.weekday) % 7
//	  if ahead == 0 then ahead = 7 end
//	  return { year = today.year, month = today.month, day = today.day + ahead }
//	end)
//
// cur holds the field's current year, month and day; today additionally holds
// weekday (0 = Sunday). A function returns a table with any of year, month
// and day (missing keys keep the current value) or nil to decline. Results are
// normalized like time.Date.
//
// Only the base, table, string and math libraries are available; dofile,
// loadfile, load and loadstring are removed.
package lua
