package errors

// Error codes for the SDL compiler. They appear in rendered diagnostics and
// let tooling match a failure without parsing its message.
//
// Error code ranges:
// E0100-E0199: Parse errors
// E0200-E0299: Compile errors
// E0300-E0399: IO errors

const (
	// E0100: Source does not match the grammar
	ErrorSyntax = "E0100"

	// E0101: Annotation written before a description or defaults block
	ErrorMisplacedAnnotation = "E0101"

	// E0200: Annotation name with no registered annotator
	ErrorUnknownAnnotation = "E0200"

	// E0201: Annotation given the wrong number of arguments
	ErrorAnnotationArity = "E0201"

	// E0202: @cache or @index used in a module without @service
	ErrorMissingService = "E0202"

	// E0203: @index naming something that is not a parameter
	ErrorUnknownIndexKey = "E0203"

	// E0204: @cache age that is not a whole number of seconds
	ErrorInvalidCacheAge = "E0204"

	// E0205: Generic type other than List<T> in a field or signature
	ErrorUnsupportedType = "E0205"

	// E0206: Struct declared after an operation
	ErrorStructAfterOperation = "E0206"

	// E0207: Requested target language is not registered
	ErrorUnknownTarget = "E0207"

	// E0208: Compile mode other than client or server
	ErrorUnknownMode = "E0208"

	// E0300: Source unreadable or output unwritable
	ErrorIO = "E0300"
)
