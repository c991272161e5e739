package serialize

// Response JSON接口的响应体, 三个字段只会出现一个
type Response struct {
	Result *string `json:"result,omitempty"`
	Image  string  `json:"image,omitempty"`
	Error  string  `json:"error,omitempty"`
}

func Result(text string) Response {
	return Response{Result: &text}
}

func Image(dataURI string) Response {
	return Response{Image: dataURI}
}

func Error(message string) Response {
	return Response{Error: message}
}
