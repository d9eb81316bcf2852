package java

// JavaTypeParameterQuery 捕获文件中声明的泛型形参 (class Box<T>, <K, V> void put(...))。
// 这些名字在作用域内遮蔽同名类型，不应交给类型解析器。
const JavaTypeParameterQuery = `
(type_parameter (type_identifier) @type_param)
`
