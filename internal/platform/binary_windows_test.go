package platform

// binaryMode keeps the C runtime from translating newlines, so tests see
// the bytes they wrote.
const binaryMode = O_BINARY
