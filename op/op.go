// Package op defines the symbolic opcodes emitted by the stackstep
// compiler, along with their rendered names and English narrations.
// Opcodes are descriptive only: they are rendered for reading, never
// executed.
package op

import (
	"fmt"
	"strings"
)

// Code is an integer opcode that identifies one instruction kind.
type Code uint16

const (
	Invalid Code = 0

	// Structure
	Nop         Code = 1
	Unsupported Code = 2
	Label       Code = 3

	// Jumps
	Jump        Code = 10
	JumpIfFalse Code = 11
	JumpIfTrue  Code = 12

	// Stack
	PushConst     Code = 20
	PushNull      Code = 21
	PushUndefined Code = 22
	Pop           Code = 23
	Dup           Code = 24

	// Variables
	DeclareVar Code = 30
	LoadVar    Code = 31
	StoreVar   Code = 32
	Increment  Code = 33
	Decrement  Code = 34

	// Arithmetic
	Add Code = 40
	Sub Code = 41
	Mul Code = 42
	Div Code = 43
	Mod Code = 44

	// Comparison
	Eq  Code = 50
	Neq Code = 51
	Lt  Code = 52
	Gt  Code = 53
	Lte Code = 54
	Gte Code = 55

	// Unary
	Not Code = 60
	Neg Code = 61

	// Iteration
	GetKeys     Code = 70
	GetIterator Code = 71
	IterHasNext Code = 72
	IterNext    Code = 73

	// Functions
	DeclareFunc     Code = 80
	Param           Code = 81
	Return          Code = 82
	ReturnUndefined Code = 83
	Call            Code = 84
	CallMethod      Code = 85

	// Properties
	GetProp         Code = 90
	GetComputedProp Code = 91

	// Builders
	Spread        Code = 100
	CreateArray   Code = 101
	CreateObject  Code = 102
	ConcatStrings Code = 103

	// Modules
	Import          Code = 110
	ImportAs        Code = 111
	ImportDefault   Code = 112
	ImportNamespace Code = 113
	Export          Code = 114
	ExportAs        Code = 115
)

// Info contains information about an opcode.
type Info struct {
	Code    Code
	Name    string
	narrate func(args []string) string
}

var infos = make([]Info, 256)

// arg returns the i-th argument, or a placeholder when the caller supplied
// too few. Keeps every narration total regardless of argument count.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return "?"
}

func init() {
	type opInfo struct {
		op      Code
		name    string
		narrate func(args []string) string
	}
	ops := []opInfo{
		{Nop, "NOOP", func(args []string) string {
			return "Do nothing"
		}},
		{Unsupported, "UNSUPPORTED", func(args []string) string {
			return fmt.Sprintf("Skip unsupported syntax (%s)", arg(args, 0))
		}},
		{Label, "LABEL", func(args []string) string {
			return fmt.Sprintf("Mark the jump target %q", arg(args, 0))
		}},
		{Jump, "JUMP", func(args []string) string {
			return fmt.Sprintf("Jump to the label %q", arg(args, 0))
		}},
		{JumpIfFalse, "JUMP_IF_FALSE", func(args []string) string {
			return fmt.Sprintf("Pop a value and jump to the label %q if it is falsy", arg(args, 0))
		}},
		{JumpIfTrue, "JUMP_IF_TRUE", func(args []string) string {
			return fmt.Sprintf("Pop a value and jump to the label %q if it is truthy", arg(args, 0))
		}},
		{PushConst, "PUSH_CONST", func(args []string) string {
			return fmt.Sprintf("Push the constant %s onto the stack", arg(args, 0))
		}},
		{PushNull, "PUSH_NULL", func(args []string) string {
			return "Push null onto the stack"
		}},
		{PushUndefined, "PUSH_UNDEFINED", func(args []string) string {
			return "Push undefined onto the stack"
		}},
		{Pop, "POP", func(args []string) string {
			return "Discard the value on top of the stack"
		}},
		{Dup, "DUP", func(args []string) string {
			return "Duplicate the value on top of the stack"
		}},
		{DeclareVar, "DECLARE_VAR", func(args []string) string {
			return fmt.Sprintf("Declare a new variable named %q", arg(args, 0))
		}},
		{LoadVar, "LOAD_VAR", func(args []string) string {
			return fmt.Sprintf("Push the value of the variable %q onto the stack", arg(args, 0))
		}},
		{StoreVar, "STORE_VAR", func(args []string) string {
			return fmt.Sprintf("Pop a value and store it in the variable %q", arg(args, 0))
		}},
		{Increment, "INCREMENT", func(args []string) string {
			return fmt.Sprintf("Add one to the variable %q", arg(args, 0))
		}},
		{Decrement, "DECREMENT", func(args []string) string {
			return fmt.Sprintf("Subtract one from the variable %q", arg(args, 0))
		}},
		{Add, "ADD", func(args []string) string {
			return "Pop two values, add them, and push the result"
		}},
		{Sub, "SUB", func(args []string) string {
			return "Pop two values, subtract the top one from the other, and push the result"
		}},
		{Mul, "MUL", func(args []string) string {
			return "Pop two values, multiply them, and push the result"
		}},
		{Div, "DIV", func(args []string) string {
			return "Pop two values, divide one by the top one, and push the result"
		}},
		{Mod, "MOD", func(args []string) string {
			return "Pop two values, compute the remainder of their division, and push it"
		}},
		{Eq, "EQ", func(args []string) string {
			return "Pop two values and push true if they are equal"
		}},
		{Neq, "NEQ", func(args []string) string {
			return "Pop two values and push true if they are not equal"
		}},
		{Lt, "LT", func(args []string) string {
			return "Pop two values and push true if the first is less than the second"
		}},
		{Gt, "GT", func(args []string) string {
			return "Pop two values and push true if the first is greater than the second"
		}},
		{Lte, "LTE", func(args []string) string {
			return "Pop two values and push true if the first is less than or equal to the second"
		}},
		{Gte, "GTE", func(args []string) string {
			return "Pop two values and push true if the first is greater than or equal to the second"
		}},
		{Not, "NOT", func(args []string) string {
			return "Pop a value and push its boolean negation"
		}},
		{Neg, "NEG", func(args []string) string {
			return "Pop a value and push its arithmetic negation"
		}},
		{GetKeys, "GET_KEYS", func(args []string) string {
			return "Pop an object and push an iterator over its keys"
		}},
		{GetIterator, "GET_ITERATOR", func(args []string) string {
			return "Pop a value and push an iterator over its elements"
		}},
		{IterHasNext, "ITER_HAS_NEXT", func(args []string) string {
			return "Push true if the current iterator has more elements"
		}},
		{IterNext, "ITER_NEXT", func(args []string) string {
			return "Advance the iterator and push the next element"
		}},
		{DeclareFunc, "DECLARE_FUNC", func(args []string) string {
			return fmt.Sprintf("Declare a function named %q taking %s parameter(s)", arg(args, 0), arg(args, 1))
		}},
		{Param, "PARAM", func(args []string) string {
			return fmt.Sprintf("Bind parameter %s to the name %q", arg(args, 1), arg(args, 0))
		}},
		{Return, "RETURN", func(args []string) string {
			return "Pop the top of the stack and return it from the function"
		}},
		{ReturnUndefined, "RETURN_UNDEFINED", func(args []string) string {
			return "Return undefined from the function"
		}},
		{Call, "CALL", func(args []string) string {
			return fmt.Sprintf("Call the function %q with %s argument(s) from the stack", arg(args, 0), arg(args, 1))
		}},
		{CallMethod, "CALL_METHOD", func(args []string) string {
			return fmt.Sprintf("Call the method %q on %q with %s argument(s) from the stack", arg(args, 1), arg(args, 0), arg(args, 2))
		}},
		{GetProp, "GET_PROP", func(args []string) string {
			return fmt.Sprintf("Pop an object and push the value of its property %q", arg(args, 0))
		}},
		{GetComputedProp, "GET_COMPUTED_PROP", func(args []string) string {
			return "Pop a key and an object and push the corresponding property value"
		}},
		{Spread, "SPREAD", func(args []string) string {
			return "Pop a value and spread its elements onto the stack"
		}},
		{CreateArray, "CREATE_ARRAY", func(args []string) string {
			return fmt.Sprintf("Pop %s value(s) and push a new array containing them", arg(args, 0))
		}},
		{CreateObject, "CREATE_OBJECT", func(args []string) string {
			return fmt.Sprintf("Pop %s key/value pair(s) and push a new object containing them", arg(args, 0))
		}},
		{ConcatStrings, "CONCAT_STRINGS", func(args []string) string {
			return fmt.Sprintf("Pop %s value(s) and push their concatenation as a string", arg(args, 0))
		}},
		{Import, "IMPORT", func(args []string) string {
			return fmt.Sprintf("Import %q from the module %s", arg(args, 0), arg(args, 1))
		}},
		{ImportAs, "IMPORT_AS", func(args []string) string {
			return fmt.Sprintf("Import %q as %q from the module %s", arg(args, 0), arg(args, 1), arg(args, 2))
		}},
		{ImportDefault, "IMPORT_DEFAULT", func(args []string) string {
			return fmt.Sprintf("Import the default export of the module %s as %q", arg(args, 1), arg(args, 0))
		}},
		{ImportNamespace, "IMPORT_NAMESPACE", func(args []string) string {
			return fmt.Sprintf("Import the module %s as the namespace %q", arg(args, 1), arg(args, 0))
		}},
		{Export, "EXPORT", func(args []string) string {
			return fmt.Sprintf("Export %q from this module", arg(args, 0))
		}},
		{ExportAs, "EXPORT_AS", func(args []string) string {
			return fmt.Sprintf("Export %q under the name %q", arg(args, 0), arg(args, 1))
		}},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:    o.op,
			Name:    o.name,
			narrate: o.narrate,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(code Code) Info {
	if int(code) >= len(infos) {
		return Info{Code: code}
	}
	return infos[code]
}

// Name returns the rendered name of the given opcode, e.g. "PUSH_CONST".
// Opcodes missing from the table render as "OP_<n>".
func Name(code Code) string {
	info := GetInfo(code)
	if info.Name == "" {
		return fmt.Sprintf("OP_%d", code)
	}
	return info.Name
}

// Render returns the display text for an instruction: the opcode name
// followed by its space-separated arguments, with no trailing separator
// when there are no arguments.
func Render(code Code, args []string) string {
	if len(args) == 0 {
		return Name(code)
	}
	return Name(code) + " " + strings.Join(args, " ")
}

// Narrate returns the English narration for an instruction. The narration
// is a pure function of the opcode and its arguments. Opcodes without a
// narration template fall back to a generic sentence, keeping the mapping
// total.
func Narrate(code Code, args []string) string {
	if info := GetInfo(code); info.narrate != nil {
		return info.narrate(args)
	}
	return fmt.Sprintf("Execute %s operation", Name(code))
}

// Codes returns every opcode that has an entry in the table, in numeric
// order. Used by tests to verify narration coverage.
func Codes() []Code {
	var codes []Code
	for i, info := range infos {
		if info.Name != "" {
			codes = append(codes, Code(i))
		}
	}
	return codes
}
