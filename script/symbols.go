// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package script

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"longform/dataframe"
	"longform/reshape"
)

// Symbols exposes the longform packages to interpreted scripts, in the
// layout yaegi's extract tool produces.
var Symbols = interp.Exports{
	"longform/dataframe/dataframe": {
		"New":              reflect.ValueOf(dataframe.New),
		"FromRecord":       reflect.ValueOf(dataframe.FromRecord),
		"FromTable":        reflect.ValueOf(dataframe.FromTable),
		"NewColumn":        reflect.ValueOf(dataframe.NewColumn),
		"NewInt64Column":   reflect.ValueOf(dataframe.NewInt64Column),
		"NewInt32Column":   reflect.ValueOf(dataframe.NewInt32Column),
		"NewFloat64Column": reflect.ValueOf(dataframe.NewFloat64Column),
		"NewStringColumn":  reflect.ValueOf(dataframe.NewStringColumn),
		"NewBoolColumn":    reflect.ValueOf(dataframe.NewBoolColumn),
		"KindOf":           reflect.ValueOf(dataframe.KindOf),

		"ErrColumnNotFound":  reflect.ValueOf(&dataframe.ErrColumnNotFound).Elem(),
		"ErrInvalidRow":      reflect.ValueOf(&dataframe.ErrInvalidRow).Elem(),
		"ErrInvalidColumn":   reflect.ValueOf(&dataframe.ErrInvalidColumn).Elem(),
		"ErrDuplicateColumn": reflect.ValueOf(&dataframe.ErrDuplicateColumn).Elem(),
		"ErrLengthMismatch":  reflect.ValueOf(&dataframe.ErrLengthMismatch).Elem(),
		"ErrNoData":          reflect.ValueOf(&dataframe.ErrNoData).Elem(),

		"Frame":    reflect.ValueOf((*dataframe.Frame)(nil)),
		"Column":   reflect.ValueOf((*dataframe.Column)(nil)),
		"Value":    reflect.ValueOf((*dataframe.Value)(nil)),
		"Kind":     reflect.ValueOf((*dataframe.Kind)(nil)),
		"Metadata": reflect.ValueOf((*dataframe.Metadata)(nil)),
	},
	"longform/reshape/reshape": {
		"Melt":             reflect.ValueOf(reshape.Melt),
		"DefaultVarName":   reflect.ValueOf(reshape.DefaultVarName),
		"DefaultValueName": reflect.ValueOf(reshape.DefaultValueName),

		"ErrMissingColumns":     reflect.ValueOf(&reshape.ErrMissingColumns).Elem(),
		"ErrOverlappingColumns": reflect.ValueOf(&reshape.ErrOverlappingColumns).Elem(),
		"ErrUnsupportedType":    reflect.ValueOf(&reshape.ErrUnsupportedType).Elem(),
		"ErrInconsistentTypes":  reflect.ValueOf(&reshape.ErrInconsistentTypes).Elem(),
		"ErrTooManyValueVars":   reflect.ValueOf(&reshape.ErrTooManyValueVars).Elem(),

		"Options":                reflect.ValueOf((*reshape.Options)(nil)),
		"MissingColumnsError":    reflect.ValueOf((*reshape.MissingColumnsError)(nil)),
		"OverlapError":           reflect.ValueOf((*reshape.OverlapError)(nil)),
		"UnsupportedTypeError":   reflect.ValueOf((*reshape.UnsupportedTypeError)(nil)),
		"InconsistentTypesError": reflect.ValueOf((*reshape.InconsistentTypesError)(nil)),
	},
}
